// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"errors"
	"testing"

	"github.com/ik5/soundobjects/geom"
)

func TestActivityRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		intervals []geom.FrameInterval
		want      geom.FrameInterval
		wantErr   error
	}{
		{
			name:      "single clip",
			intervals: []geom.FrameInterval{{Start: 3, End: 9}},
			want:      geom.FrameInterval{Start: 3, End: 9},
		},
		{
			name:      "union of clips",
			intervals: []geom.FrameInterval{{Start: 20, End: 30}, {Start: 5, End: 8}},
			want:      geom.FrameInterval{Start: 5, End: 30},
		},
		{name: "no clips", wantErr: ErrNoActivation},
		{
			name:      "malformed clip",
			intervals: []geom.FrameInterval{{Start: 9, End: 3}},
			wantErr:   geom.ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ActivityRange(fileSource{name: "s", intervals: tt.intervals})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ActivityRange() = (%v, %v), want %v", got, err, tt.want)
			}
		})
	}
}
