// Package taxonomy models a privacy-data controlled vocabulary: data
// categories, data uses, data qualifiers, and data subjects, each expressed
// as keyed entries whose parent references form a forest.
//
// Entries are loaded in bulk, validated as a batch, and held as immutable
// collections. A built Collection is safe for concurrent readers because
// nothing mutates it after Build.
package taxonomy
