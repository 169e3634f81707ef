// Package dcs defines the DOAP changeset IRIs used for release history
// entries.
package dcs

const (
	Namespace = "http://ontologi.es/doap-changeset#"

	Changeset = Namespace + "changeset"
	Item      = Namespace + "item"
	Blame     = Namespace + "blame"
)
