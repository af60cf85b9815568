package metadata

import (
	"strings"

	"github.com/meigma/asar/internal/asartype"
	"github.com/meigma/asar/internal/jsontree"
	"github.com/meigma/asar/internal/pathutil"
)

// KeyFiles is the key holding a folder's children.
const KeyFiles = "files"

// BuildFolder builds a folder from the children object found under a
// "files" key. path locates that object in the header, for errors.
//
// A child is a folder exactly when its node is an object whose only key is
// "files". Every other child is decoded as a file.
func BuildFolder(children *jsontree.Node, path string) (*asartype.Folder, error) {
	if children.Kind() != jsontree.KindObject {
		return nil, asartype.Malformed(path, "expected object, got %s", children.Kind())
	}

	folder := asartype.NewFolder()
	for _, name := range children.Keys() {
		n, _ := children.Field(name)
		childPath := pathutil.Join(path, name)
		if !validName(name) {
			return nil, asartype.Malformed(childPath, "invalid name %q", name)
		}

		if n.HasOnlyKey(KeyFiles) {
			grandchildren, _ := n.Field(KeyFiles)
			sub, err := BuildFolder(grandchildren, pathutil.Join(childPath, KeyFiles))
			if err != nil {
				return nil, err
			}
			folder.AddFolder(name, sub)
			continue
		}

		entry, err := decodeFile(n, childPath)
		if err != nil {
			return nil, err
		}
		folder.AddFile(name, entry)
	}
	return folder, nil
}

// validName reports whether name can be a single element of a slash path.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}

// Build decodes a whole header document of the form {"files": {...}}.
func Build(doc *jsontree.Node) (*asartype.Folder, error) {
	if doc.Kind() != jsontree.KindObject {
		return nil, asartype.Malformed("", "header is %s, not object", doc.Kind())
	}
	files, ok := doc.Field(KeyFiles)
	if !ok {
		return nil, asartype.Malformed("", "header has no %q key", KeyFiles)
	}
	return BuildFolder(files, KeyFiles)
}
