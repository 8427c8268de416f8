package core

import "strconv"

// BodyID identifies a dynamic body tracked by the physics world
type BodyID uint64

// NoBody is the zero identity; as a filter it matches any body
const NoBody BodyID = 0

func (id BodyID) String() string {
	if id == NoBody {
		return "any"
	}
	return "body#" + strconv.FormatUint(uint64(id), 10)
}
