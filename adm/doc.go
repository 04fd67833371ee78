// SPDX-License-Identifier: EPL-2.0

// Package adm builds the Audio Definition Model (ITU-R BS.2076) metadata of
// an object export: the axml document and the chna track table.
//
// One programme holds one content named "Objects". Every object gets its own
// pack, channel, stream and track format plus a track UID, all of type
// Objects (0003). IDs are handed out in object order, starting at 0x1001 for
// objects and packs and at 1 for track UIDs, so the same input always yields
// the same document.
//
// Times are written as "hh:mm:ss.zzzzz" when five decimals are exact and in
// the fractional "hh:mm:ss.zzzzzSfffff" form otherwise.
package adm
