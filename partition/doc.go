// SPDX-License-Identifier: EPL-2.0

// Package partition groups sound sources into ADM objects.
//
// Sources are ordered by how close they come to the camera over the scene,
// closest first, with ties kept in input order. Each source then goes into
// the first existing group whose members are all silent while it plays, or
// opens a new group. Members of a group are finally ordered by start frame.
//
// Groups past the object limit are returned as overflow. They are the groups
// opened last, so they hold the sources farthest from the camera.
//
//	res, err := partition.Partition(host, 24, log)
//	for _, g := range res.Groups {
//	    fmt.Println(g.Name(), g.Names())
//	}
package partition
