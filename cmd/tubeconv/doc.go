// Command tubeconv runs the YouTube conversion service and provides
// operational subcommands for status, history, retention, and configuration.
package main
