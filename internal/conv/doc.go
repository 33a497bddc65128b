// Package conv provides checked integer conversions for values read from
// shared memory regions, where counts and offsets are not trusted.
package conv
