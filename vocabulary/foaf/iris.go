// Package foaf defines the friend-of-a-friend IRIs used to name people in
// author credits.
package foaf

const (
	Namespace = "http://xmlns.com/foaf/0.1/"

	Name = Namespace + "name"
	Mbox = Namespace + "mbox"
)
