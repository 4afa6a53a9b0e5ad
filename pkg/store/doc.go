// Package store writes export documents into single-file resource packs and
// reads them back.
//
// A pack is a bbolt database with one bucket per record category
// (bitmaps, shapes, texts, timelines), a meta bucket holding the build
// settings, and an index bucket mapping category and asset id to the
// record key. Record keys are zero-padded sequence numbers, so iterating a
// bucket yields records in their original order and [Unpack] rebuilds the
// document exactly as it was packed.
//
// Packs are convenient for shipping a large export next to its images:
// [Lookup] reads one record without decoding the rest of the file.
package store
