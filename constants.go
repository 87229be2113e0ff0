package usdmesh

// Crate file constants (bootstrap header and value layout).
const (
	crateMagic       = "PXR-USDC"
	crateVersionMaj  = 0
	crateVersionMin  = 7
	crateVersionPatch = 0
	crateBootstrapSize = 96
	crateTocNameSize = 16

	// sentinel terminating a variable-length fieldset group.
	fieldSetSentinel int32 = -1
)

// ValueType tags the closed set of value shapes the Crate writer emits.
type ValueType int

const (
	ValueToken ValueType = iota
	ValueTokenArray
	ValueTokenVector
	ValueInt32Array
	ValueFloat
	ValueVec3fScalar
	ValueVec3fArray
	ValueBool
	ValueVariability
	ValueSpecifier
	ValueDictionary
	ValuePathConnection
	ValuePathRelationship
)

// SpecType mirrors USD's Sdf spec kinds for the subset this writer emits.
type SpecType int

const (
	SpecPseudoRoot SpecType = 1
	SpecPrim       SpecType = 2
	SpecAttribute  SpecType = 3
	SpecRelationship SpecType = 4
)

// Specifier is the USD prim specifier.
type Specifier int

const (
	SpecifierDef Specifier = iota
	SpecifierOver
	SpecifierClass
)

// Variability for USD attributes.
type Variability int

const (
	VariabilityVarying Variability = iota
	VariabilityUniform
)

// ZIP / USDZ layout constants.
const (
	usdzAlignment    = 64
	usdzExtraFieldID = 0x0001
	zipLocalFileHeaderSig = 0x04034b50
	zipCentralDirSig      = 0x02014b50
	zipEndOfCentralDirSig = 0x06054b50
)

// GLB container constants.
const (
	glbMagic       uint32 = 0x46546C67
	glbVersion     uint32 = 2
	glbChunkJSON   uint32 = 0x4E4F534A
	glbChunkBIN    uint32 = 0x004E4942
	glbHeaderSize  uint32 = 12
	glbChunkHeader uint32 = 8
)
