// SPDX-License-Identifier: EPL-2.0

// Package project models a looper project and the operations on it.
//
// A State holds file records and six tapes (blue, green, pink, red, teal,
// yellow) of six slots each. A slot holds at most one file id; one file may
// sit in several slots at once, which Duplicates reports. Every record
// keeps its full version history, newest first.
//
// Engine methods never modify the State they are given. Each returns the
// next State, or the input unchanged together with an error:
//
//	eng := project.New(ingest.New())
//	st := project.NewState()
//	st, id, err := eng.AssignNewUpload(ctx, st, project.Location{Color: project.Blue, Slot: 3}, raw)
//	st, err = eng.MoveOrCopy(st, project.Location{Color: project.Red, Slot: 1}, id, project.SourceSlot, false)
//
// After every operation the engine reconciles the state: slots that point
// at missing files are cleared, dangling current versions fall back to the
// newest one and IsParked is recomputed from the grid. Repairs are logged
// as IntegrityError values at warn level.
package project
