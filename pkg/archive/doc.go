// Package archive opens package archives, derives the package name from
// their internal layout and extracts their contents.
//
// The package name is the top-level directory of the first entry listed
// in the archive. Archives are trusted to list their root directory first;
// an archive whose first entry sits at the archive root (no directory) is
// rejected rather than installed under a guessed name.
package archive
