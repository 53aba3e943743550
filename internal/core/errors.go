package core

import "errors"

// ErrAssetMissing is returned when a level file or a required image/animation
// resource cannot be opened. Fatal for level loading; animation lookups log and skip.
var ErrAssetMissing = errors.New("asset missing")

// ErrStateCorruption marks a simulation counter observed outside its expected
// bounds. It is only ever logged: the owner clamps the value and carries on.
var ErrStateCorruption = errors.New("state corruption")
