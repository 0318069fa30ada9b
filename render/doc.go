// Package render produces the status sidebar fragment shown next to the map.
package render
