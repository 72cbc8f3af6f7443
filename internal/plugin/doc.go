// Package plugin provides the table-driven handler used by every relay
// plugin, and the ordered filter chain bus sessions dispatch through.
//
// # Contract
//
// A Plugin is built from one D-Bus interface name and a table mapping member
// names to Events. Activate installs the plugin as a filter for its
// interface; Deactivate removes it.
//
// Filter(msg):
//  1. If msg.Interface is not the plugin's interface, or msg.Member has no
//     Event: NotHandled. Nothing is logged.
//  2. Event.Decode checks the exact arity and type of msg.Args. On failure a
//     single warning carrying the decoder's message is logged and the
//     message is dropped: Handled.
//  3. On success the decoded record is encoded to a Trap and passed to the
//     Emitter exactly once: Handled.
//
// # Chain
//
// Chain keeps (interface, filter) entries in insertion order. Dispatch stops
// at the first filter that returns Handled. Chain is not safe for concurrent
// use; bus sessions drive it from the daemon loop.
package plugin
