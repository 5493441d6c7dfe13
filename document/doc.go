// Package document reads and writes the HTML form of a slot tree.
//
// Components are written through their renderers in output mode and read
// back through the loaders of a component.Registry.
package document
