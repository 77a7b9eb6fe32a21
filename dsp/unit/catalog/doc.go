// Package catalog maps unit names to their constructors.
//
// [Default] holds every built-in unit. [Registry.New] builds an instance,
// writes its default parameters and initializes it, so the result is ready
// to process.
package catalog
