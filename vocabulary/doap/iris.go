// Package doap defines the Description-of-a-Project IRIs used for release
// metadata and author credits.
package doap

const (
	Namespace = "http://usefulinc.com/ns/doap#"

	Name        = Namespace + "name"
	ShortDesc   = Namespace + "shortdesc"
	Created     = Namespace + "created"
	Release     = Namespace + "release"
	Revision    = Namespace + "revision"
	FileRelease = Namespace + "file-release"
	Developer   = Namespace + "developer"
	Maintainer  = Namespace + "maintainer"
)
