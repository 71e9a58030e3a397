// Package kernel provides the shared primitives of the postal domain model:
//   - UUID: identifier value object for notifications and sessions
//   - Clock: injectable wall-clock used by every time-gated rule
//   - RandomSource: injectable randomness for delay injection, estimated delivery
//     windows and tracking code suffixes
package kernel
