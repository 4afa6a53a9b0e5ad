// Package format holds the small formatting helpers used when writing
// export data for humans: number rounding and two JSON layouts that are
// easier to read and diff than the raw output.
//
// Object keys are emitted in the order encoding/json uses, which sorts map
// keys. Struct fields keep their declaration order.
package format
