// Package component defines components, their instances and the services a
// host injects into them.
//
// A Definition is a named factory. CreateInstance wires the instance's slots,
// runs Setup with an explicit set of host Services, and keeps the Renderer
// Setup returns. Hosts redraw an instance after its ChangeMarker reports it
// dirty.
package component
