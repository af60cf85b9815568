// Package metadata turns the JSON header of an archive into a typed
// folder tree.
//
// A header is a nested set of "files" objects. Each child of a files object
// is either a folder, which is an object with "files" as its only key, or a
// file node carrying size, storage and integrity fields.
package metadata
