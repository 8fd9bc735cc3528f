package section

import "math"

// Magic is the fixed prefix of every npy file.
var Magic = [MagicSize]byte{0x93, 'N', 'U', 'M', 'P', 'Y'}

const (
	MagicSize      = 6  // size of the magic prefix in bytes
	VersionSize    = 2  // major and minor version bytes
	HeaderAlign    = 16 // total header length is a multiple of this
	VersionMinor   = 0  // minor version written for every major version
	headerNewline  = '\n'
	headerPadding  = ' '
	v1LengthMax    = math.MaxUint16 // largest header length a version 1.0 field can hold
	v2LengthMax    = math.MaxUint32 // largest header length a version 2.0 field can hold
	v1DictLimit    = math.MaxUint16 // dictionaries at least this long always use version 2.0
	v1PrefixSize   = MagicSize + VersionSize + 2
	v2PrefixSize   = MagicSize + VersionSize + 4
	dictFirstKey   = "{'descr': '"
	dictFortranKey = "', 'fortran_order': "
	dictShapeKey   = ", 'shape': "
	dictClose      = "}"
)
