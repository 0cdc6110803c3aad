// Package project invokes the framework generators (create-next-app,
// create-vite, create-vue, the Angular CLI, create-astro) and inspects the
// projects they produce.
//
// Generators always run with an explicit working directory. The hackpack
// process never changes its own.
package project
