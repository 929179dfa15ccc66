// Package output renders command results for the metricsdump CLI as a
// table, JSON or YAML.
//
// Tables are built by reflection: a slice of structs becomes one row per
// element with a column per exported field, a struct becomes FIELD/VALUE
// rows and a map becomes KEY/VALUE rows sorted by key. Column names come
// from the json tag. A `table:"-"` tag hides a field and `table:"wide"`
// shows it only in wide mode.
package output
