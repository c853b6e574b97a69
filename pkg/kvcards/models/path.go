package models

import "fmt"

// PathKind classifies a raw path against the filesystem.
type PathKind int

const (
	// PathNotFound means neither the path nor its parent directory exists.
	PathNotFound PathKind = iota
	// PathParentExists means the path is absent but its parent directory exists.
	PathParentExists
	// PathExists means the path exists.
	PathExists
)

func (k PathKind) String() string {
	switch k {
	case PathNotFound:
		return "not_found"
	case PathParentExists:
		return "parent_exists"
	case PathExists:
		return "exists"
	default:
		return fmt.Sprintf("PathKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k PathKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PathResolution is the result of resolving a raw path.
// The zero value is NotFound.
type PathResolution struct {
	Kind PathKind `json:"kind" yaml:"kind"`
	// Path is the raw path for Exists and ParentExists, empty otherwise.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Exists returns an Exists resolution.
func Exists(path string) PathResolution {
	return PathResolution{Kind: PathExists, Path: path}
}

// ParentExists returns a ParentExists resolution.
func ParentExists(path string) PathResolution {
	return PathResolution{Kind: PathParentExists, Path: path}
}

// NotFound returns a NotFound resolution.
func NotFound() PathResolution {
	return PathResolution{}
}

func (r PathResolution) String() string {
	if r.Kind == PathNotFound {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", r.Kind, r.Path)
}
