// Package wizard implements the interactive configuration form behind
// "miqctl init". It collects the management server connection details and
// the desired provider record, and converts the answers into a
// config.Config ready to be written out.
package wizard
