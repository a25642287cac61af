// Package app runs the varsubst command once its arguments are parsed. It
// loads settings and variable sources, builds the resolver chain, renders
// templates (once or in watch mode) and serves the store subcommand.
package app
