// Package template holds the declarative block templates: a recursive Node
// tree per (block type, variant), where a node is either a container that
// renders its children or a content leaf that receives block content. The Set
// type acts as the template registry and resolves unknown variants to the
// "default" one.
package template
