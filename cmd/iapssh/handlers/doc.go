// Package handlers implements the business logic for iapssh commands.
//
// Each handler loads its inputs, prepares the environment and runs the
// operation. Collaborators are created through package-level factory
// variables so tests can replace them.
package handlers
