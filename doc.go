// Package collate provides multi-criteria, type-aware comparison and
// sorting of records.
//
// A Criterion (package 'compare') names a field, a type that says how
// the field's values are parsed before they are compared, an optional
// parsing pattern, and a direction.  A Comparator applies an ordered
// list of Criteria: the first one that distinguishes two records
// decides.
//
// Records (package 'record') are ordered maps.  Package 'codec' reads
// and writes them as JSON, YAML, CSV, and XLSX, package 'storage'
// keeps named profiles of Criteria, and some command-line tools are
// in 'cmd'.
package collate
