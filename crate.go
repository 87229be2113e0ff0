package usdmesh

import (
	"math"
	"sort"
)

// Crate writer: the central algorithm. Walks a USD scene tree, interns
// tokens/strings/fields/field-sets/paths/specs, and emits the six-section
// Crate body plus a table of contents.
//
// Two layout decisions are recorded in DESIGN.md: (1) out-of-line value
// payloads (arrays, dictionaries, PathListOp/PathVector, time samples) live
// in an unnamed data region written immediately after the bootstrap,
// addressed by absolute file offset — the six named TOC sections hold no
// payload data themselves, so it has to live somewhere readers can reach
// via rep64's offset; (2) every "LZ4+compacted-index" blob is prefixed with
// just its compressed byte length (no separate uncompressed length), since
// the element count is always already known from the section's own leading
// count field.
type crateWriter struct {
	data *byteSink // out-of-line payload region, immediately after bootstrap

	tokens     []string
	tokenIndex map[string]int32

	strings     []int32
	stringIndex map[int32]int32 // token index -> strings[] index

	fieldTokens []int32
	fieldReps   []uint64
	fieldIndex  map[fieldKey]int32

	fieldSetsFlat []int32
	fieldSetIndex map[string]int32

	pathPathIdx  []int32
	pathTokenIdx []int32
	pathJump     []int32

	specPathIdx     []int32
	specFieldSetIdx []int32
	specType        []int32

	arrayOffsets map[string]uint64 // byte-identity dedup of out-of-line blobs

	timeSamples timeSamplesState
}

type fieldKey struct {
	token int32
	rep   uint64
}

func newCrateWriter() *crateWriter {
	return &crateWriter{
		data:          newByteSink(),
		tokenIndex:    make(map[string]int32),
		stringIndex:   make(map[int32]int32),
		fieldIndex:    make(map[fieldKey]int32),
		fieldSetIndex: make(map[string]int32),
		arrayOffsets:  make(map[string]uint64),
	}
}

func (cw *crateWriter) internToken(s string) int32 {
	if idx, ok := cw.tokenIndex[s]; ok {
		return idx
	}
	idx := int32(len(cw.tokens))
	cw.tokens = append(cw.tokens, s)
	cw.tokenIndex[s] = idx
	return idx
}

func (cw *crateWriter) internString(s string) int32 {
	tok := cw.internToken(s)
	if idx, ok := cw.stringIndex[tok]; ok {
		return idx
	}
	idx := int32(len(cw.strings))
	cw.strings = append(cw.strings, tok)
	cw.stringIndex[tok] = idx
	return idx
}

// rep64 layout: low 48 bits payload; bits 48..55 value type; bit 61
// compressed; bit 62 inline; bit 63 array.
func makeRep64(vt ValueType, payload uint64, inline, array, compressed bool) uint64 {
	rep := payload & 0xFFFFFFFFFFFF
	rep |= uint64(vt) << 48
	if compressed {
		rep |= 1 << 61
	}
	if inline {
		rep |= 1 << 62
	}
	if array {
		rep |= 1 << 63
	}
	return rep
}

func (cw *crateWriter) internField(tokenIdx int32, rep uint64) int32 {
	key := fieldKey{token: tokenIdx, rep: rep}
	if idx, ok := cw.fieldIndex[key]; ok {
		return idx
	}
	idx := int32(len(cw.fieldTokens))
	cw.fieldTokens = append(cw.fieldTokens, tokenIdx)
	cw.fieldReps = append(cw.fieldReps, rep)
	cw.fieldIndex[key] = idx
	return idx
}

// fieldSetKey renders a group of field indices into a string for dedup;
// groups differing only in order are NOT considered equal (field-set
// groups are never reordered once emitted).
func fieldSetKey(fields []int32) string {
	b := make([]byte, 0, len(fields)*4)
	for _, f := range fields {
		b = append(b, byte(f), byte(f>>8), byte(f>>16), byte(f>>24))
	}
	return string(b)
}

func (cw *crateWriter) internFieldSet(fields []int32) int32 {
	key := fieldSetKey(fields)
	if idx, ok := cw.fieldSetIndex[key]; ok {
		return idx
	}
	start := int32(len(cw.fieldSetsFlat))
	cw.fieldSetsFlat = append(cw.fieldSetsFlat, fields...)
	cw.fieldSetsFlat = append(cw.fieldSetsFlat, fieldSetSentinel)
	cw.fieldSetIndex[key] = start
	return start
}

func (cw *crateWriter) addPath(pathIdx, tokenIdx, jump int32) {
	cw.pathPathIdx = append(cw.pathPathIdx, pathIdx)
	cw.pathTokenIdx = append(cw.pathTokenIdx, tokenIdx)
	cw.pathJump = append(cw.pathJump, jump)
}

func (cw *crateWriter) addSpec(pathIdx, fieldSetIdx int32, st SpecType) {
	cw.specPathIdx = append(cw.specPathIdx, pathIdx)
	cw.specFieldSetIdx = append(cw.specFieldSetIdx, fieldSetIdx)
	cw.specType = append(cw.specType, int32(st))
}

// dataOffset returns the absolute file offset (from byte 0, past the
// bootstrap) the next write into the data region will land at.
func (cw *crateWriter) dataOffset() uint64 {
	return uint64(crateBootstrapSize) + uint64(cw.data.tell())
}

// writeDedupedBlob writes raw bytes to the data region unless byte-identical
// content was already written, returning its absolute file offset either
// way — large immutable data blobs are deduplicated on exact byte-identity
// of the source array.
func (cw *crateWriter) writeDedupedBlob(b []byte) uint64 {
	key := string(b)
	if off, ok := cw.arrayOffsets[key]; ok {
		return off
	}
	off := cw.dataOffset()
	cw.data.writeBytes(b)
	cw.arrayOffsets[key] = off
	return off
}

// ---- value payload encoding ----

func (cw *crateWriter) encodeValue(v Value) (uint64, error) {
	switch v.Type {
	case ValueToken:
		tok := cw.internToken(v.Token)
		return makeRep64(v.Type, uint64(uint32(tok)), true, false, false), nil

	case ValueTokenArray:
		s := newByteSink()
		s.writeU64(uint64(len(v.Tokens)))
		for _, t := range v.Tokens {
			s.writeI32(cw.internToken(t))
		}
		off := cw.writeDedupedBlob(s.bytes())
		return makeRep64(v.Type, off, false, true, false), nil

	case ValueTokenVector:
		s := newByteSink()
		s.writeU64(uint64(len(v.Tokens)))
		for _, t := range v.Tokens {
			s.writeI32(cw.internToken(t))
		}
		s.pad(4)
		off := cw.writeDedupedBlob(s.bytes())
		return makeRep64(v.Type, off, false, true, false), nil

	case ValuePathConnection, ValuePathRelationship:
		return 0, fatalf(ErrUnsupportedValueType, "PathConnection/PathRelationship must be encoded via their dedicated attribute-writing path, not encodeValue")

	case ValueSpecifier:
		return makeRep64(v.Type, uint64(v.Specifier), true, false, false), nil

	case ValueBool:
		var b uint64
		if v.Bool {
			b = 1
		}
		return makeRep64(v.Type, b, true, false, false), nil

	case ValueVariability:
		return makeRep64(v.Type, uint64(v.Variability), true, false, false), nil

	case ValueInt32Array:
		n := len(v.Ints)
		var off uint64
		compressed := n >= 16
		if compressed {
			encoded := usdIntEncode(v.Ints)
			off = cw.writeDedupedBlob(prefixedIntBlob(n, encoded))
		} else {
			s := newByteSink()
			s.writeU64(uint64(n))
			for _, i := range v.Ints {
				s.writeI32(i)
			}
			off = cw.writeDedupedBlob(s.bytes())
		}
		return makeRep64(v.Type, off, false, true, compressed), nil

	case ValueFloat:
		bits := math.Float32bits(v.Float)
		return makeRep64(v.Type, uint64(bits), true, false, false), nil

	case ValueVec3fArray:
		s := newByteSink()
		s.writeU64(uint64(len(v.Vec3Array)))
		for _, p := range v.Vec3Array {
			s.writeF32(float32(p[0]))
			s.writeF32(float32(p[1]))
			s.writeF32(float32(p[2]))
		}
		off := cw.writeDedupedBlob(s.bytes())
		return makeRep64(v.Type, off, false, true, false), nil

	case ValueVec3fScalar:
		s := newByteSink()
		s.writeF32(float32(v.Vec3[0]))
		s.writeF32(float32(v.Vec3[1]))
		s.writeF32(float32(v.Vec3[2]))
		off := cw.writeDedupedBlob(s.bytes())
		return makeRep64(v.Type, off, false, false, false), nil

	case ValueDictionary:
		s := newByteSink()
		keys := sortedMetaKeys(v.Dict)
		s.writeU64(uint64(len(keys)))
		for _, k := range keys {
			entry := v.Dict[k]
			keyIdx := cw.internString(k)
			s.writeI32(keyIdx)
			s.writeU64(8)
			valStr, ok := entry.Value.(string)
			if !ok {
				return 0, fatalf(ErrUnsupportedValueType, "dictionary entry %q is not string-valued", k)
			}
			valIdx := cw.internString(valStr)
			s.writeI32(valIdx)
			s.writeI32(1074397184)
		}
		off := cw.writeDedupedBlob(s.bytes())
		return makeRep64(v.Type, off, false, false, false), nil

	default:
		return 0, fatalf(ErrUnsupportedValueType, "value type %d not in the closed set this writer emits", v.Type)
	}
}

// prefixedIntBlob assembles the out-of-line payload for a compressed int
// array value: u64 count, u64 compressed byte length, then the LZ4-wrapped
// USD-int-coded stream.
func prefixedIntBlob(n int, encoded []byte) []byte {
	compressed := lz4CrateBlock(encoded)
	s := newByteSink()
	s.writeU64(uint64(n))
	s.writeU64(uint64(len(compressed)))
	s.writeBytes(compressed)
	return s.bytes()
}

// lz4CrateBlock wraps lz4CompressBlock with the single leading zero byte
// the Crate format prefixes every compressed chunk with.
func lz4CrateBlock(data []byte) []byte {
	body, err := lz4CompressBlock(data)
	if err != nil {
		// The only error lz4CompressBlock returns is for input over
		// lz4MaxBlockInputSize. Nothing checks sizes before this point,
		// so such an input panics here rather than being returned as an
		// ErrInputTooLarge error.
		panic(err)
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, 0)
	out = append(out, body...)
	return out
}

func writePathListOp(cw *crateWriter, targetPathIdx int32) uint64 {
	s := newByteSink()
	s.writeU8(3) // op
	s.writeU64(1)
	s.writeI32(targetPathIdx)
	off := cw.writeDedupedBlob(s.bytes())
	return makeRep64(ValuePathConnection, off, false, false, false)
}

func writePathVector(cw *crateWriter, targetPathIdx int32) uint64 {
	s := newByteSink()
	s.writeU64(1)
	s.writeI32(targetPathIdx)
	off := cw.writeDedupedBlob(s.bytes())
	return makeRep64(ValuePathRelationship, off, false, true, false)
}

func sortedMetaKeys(m Metadata) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// metaOrder returns an explicit order if given, else sorted keys — metadata
// maps have no inherent order, and the field-set ordering it drives must be
// deterministic across runs since field-set groups are never reordered
// once emitted.
func metaOrder(m Metadata, order []string) []string {
	if order != nil {
		return order
	}
	return sortedMetaKeys(m)
}

// writeMetaField appends the field for one metadata entry to fields,
// dispatching by MetaType; "references" is explicitly unimplemented.
func (cw *crateWriter) writeMetaField(fields *[]int32, key string, mv MetaValue) error {
	if key == "references" {
		return fatalf(ErrUnimplementedMetadata, "prim metadata %q is not implemented", key)
	}
	tok := cw.internToken(key)
	switch mv.Type {
	case MetaString:
		rep, err := cw.encodeValue(TokenValue(mv.Value.(string)))
		if err != nil {
			return err
		}
		*fields = append(*fields, cw.internField(tok, rep))
	case MetaFloat:
		rep, err := cw.encodeValue(FloatValue(float32(mv.Value.(float64))))
		if err != nil {
			return err
		}
		*fields = append(*fields, cw.internField(tok, rep))
	case MetaBool:
		rep, err := cw.encodeValue(BoolValue(mv.Value.(bool)))
		if err != nil {
			return err
		}
		*fields = append(*fields, cw.internField(tok, rep))
	case MetaDictionary:
		rep, err := cw.encodeValue(DictionaryValue(mv.Value.(Metadata)))
		if err != nil {
			return err
		}
		*fields = append(*fields, cw.internField(tok, rep))
	case MetaPrimRef:
		target := mv.Value.(*Prim)
		rep := writePathListOp(cw, target.pathIndex)
		*fields = append(*fields, cw.internField(tok, rep))
	default:
		return fatalf(ErrUnsupportedValueType, "unknown metadata type for key %q", key)
	}
	return nil
}

// writePrim emits one prim's own Spec/Path entries (specifier, type name,
// metadata, children and attribute name lists), then recurses into its
// children and attributes.
func (cw *crateWriter) writePrim(p *Prim) error {
	var fields []int32

	specifierTok := cw.internToken("specifier")
	specRep, _ := cw.encodeValue(SpecifierValue(p.Specifier))
	fields = append(fields, cw.internField(specifierTok, specRep))

	typeNameTok := cw.internToken("typeName")
	typeRep, _ := cw.encodeValue(TokenValue(p.TypeName))
	fields = append(fields, cw.internField(typeNameTok, typeRep))

	for _, key := range metaOrder(p.Metadata, p.MetaOrder) {
		if err := cw.writeMetaField(&fields, key, p.Metadata[key]); err != nil {
			return err
		}
	}

	if len(p.Attributes) > 0 {
		names := make([]string, len(p.Attributes))
		for i, a := range p.Attributes {
			names[i] = a.Name
		}
		rep, err := cw.encodeValue(TokenVectorValue(names))
		if err != nil {
			return err
		}
		fields = append(fields, cw.internField(cw.internToken("properties"), rep))
	}

	if len(p.Children) > 0 {
		names := make([]string, len(p.Children))
		for i, c := range p.Children {
			names[i] = c.Name
		}
		rep, err := cw.encodeValue(TokenVectorValue(names))
		if err != nil {
			return err
		}
		fields = append(fields, cw.internField(cw.internToken("primChildren"), rep))
	}

	fsIdx := cw.internFieldSet(fields)
	cw.addSpec(p.pathIndex, fsIdx, SpecPrim)
	nameTok := cw.internToken(p.Name)
	cw.addPath(p.pathIndex, -nameTok, p.jump)

	for _, c := range p.Children {
		if err := cw.writePrim(c); err != nil {
			return err
		}
	}
	for _, a := range p.Attributes {
		if err := cw.writeAttribute(a); err != nil {
			return err
		}
	}
	return nil
}

// timeSamplesState caches the absolute offset of the first time-samples
// frames block written, so later time-sampled attributes in the same file
// point at it instead of writing a frames block of their own.
type timeSamplesState struct {
	framesOffset uint64
	set          bool
}

// writeTimeSamplesField appends a "timeSamples" field for an attribute's
// ordered (time, value) list. The first time-sampled attribute in the file
// writes a frames block laid out as: u64 size (byte length of what
// follows), u64 count, then count little-endian f64 times; every later
// time-sampled attribute reuses that block's offset, whatever its own
// sample times are.
func (cw *crateWriter) writeTimeSamplesField(fields *[]int32, a *Attribute, ts *timeSamplesState) error {
	if len(a.Samples) == 0 {
		return nil
	}

	var framesOff uint64
	if ts.set {
		framesOff = ts.framesOffset
	} else {
		s := newByteSink()
		count := uint64(len(a.Samples))
		s.writeU64(8 + 8*count) // size: the count field plus all f64 times
		s.writeU64(count)
		for _, sample := range a.Samples {
			s.writeF64(sample.Time)
		}
		framesOff = cw.writeDedupedBlob(s.bytes())
		ts.framesOffset = framesOff
		ts.set = true
	}

	body := newByteSink()
	// pointer past the size field, at the count field the reader expects
	// to find there: (offset, DoubleVector-tagged, 0)
	body.writeU48(framesOff + 8)
	body.writeU8(0)
	body.writeU8(0)

	body.writeU64(8) // stride
	body.writeU64(uint64(len(a.Samples)))
	for _, sample := range a.Samples {
		rep, err := cw.encodeValue(sample.Value)
		if err != nil {
			return err
		}
		body.writeU48(rep & 0xFFFFFFFFFFFF)
		body.writeU8(byte((rep >> 48) & 0xFF))
		body.writeU8(byte((rep >> 56) & 0xFF))
	}

	off := cw.writeDedupedBlob(body.bytes())
	rep := makeRep64(ValueFloat, off, false, true, false)
	*fields = append(*fields, cw.internField(cw.internToken("timeSamples"), rep))
	return nil
}

// writeAttribute emits one attribute's Spec/Path entries. An attribute is
// one of three shapes: a relationship connection (points at another
// attribute), a relationship target (points at a prim), or a plain typed
// value with optional time samples. A plain attribute always gets a
// "default" field; no value of Value omits it.
func (cw *crateWriter) writeAttribute(a *Attribute) error {
	var fields []int32

	switch a.Value.Type {
	case ValuePathConnection:
		target := a.Value.Connection
		typeRep, _ := cw.encodeValue(TokenValue(a.TypeName))
		fields = append(fields, cw.internField(cw.internToken("typeName"), typeRep))
		if err := cw.writeQualifiers(&fields, a.Qualifiers); err != nil {
			return err
		}
		connRep := writePathListOp(cw, target.pathIndex)
		fields = append(fields, cw.internField(cw.internToken("connectionPaths"), connRep))
		childRep := writePathVector(cw, target.pathIndex)
		fields = append(fields, cw.internField(cw.internToken("connectionChildren"), childRep))

		fsIdx := cw.internFieldSet(fields)
		cw.addSpec(a.pathIndex, fsIdx, SpecAttribute)
		// Attribute path tokens are NOT negated, unlike prims — readers
		// tell the two apart by Spec type, not by the sign of the token.
		cw.addPath(a.pathIndex, cw.internToken(a.Name), a.jump)
		return nil

	case ValuePathRelationship:
		target := a.Value.Relationship
		varRep, _ := cw.encodeValue(BoolValue(true))
		fields = append(fields, cw.internField(cw.internToken("variability"), varRep))
		targetRep := writePathListOp(cw, target.pathIndex)
		fields = append(fields, cw.internField(cw.internToken("targetPaths"), targetRep))
		childRep := writePathVector(cw, target.pathIndex)
		fields = append(fields, cw.internField(cw.internToken("targetChildren"), childRep))

		fsIdx := cw.internFieldSet(fields)
		cw.addSpec(a.pathIndex, fsIdx, SpecRelationship)
		// Attribute path tokens are NOT negated, unlike prims — readers
		// tell the two apart by Spec type, not by the sign of the token.
		cw.addPath(a.pathIndex, cw.internToken(a.Name), a.jump)
		return nil

	default:
		typeRep, err := cw.encodeValue(TokenValue(a.TypeName))
		if err != nil {
			return err
		}
		fields = append(fields, cw.internField(cw.internToken("typeName"), typeRep))

		if err := cw.writeQualifiers(&fields, a.Qualifiers); err != nil {
			return err
		}

		for _, key := range metaOrder(a.Metadata, a.MetaOrder) {
			if err := cw.writeMetaField(&fields, key, a.Metadata[key]); err != nil {
				return err
			}
		}

		rep, err := cw.encodeValue(a.Value)
		if err != nil {
			return err
		}
		fields = append(fields, cw.internField(cw.internToken("default"), rep))

		if err := cw.writeTimeSamplesField(&fields, a, &cw.timeSamples); err != nil {
			return err
		}

		fsIdx := cw.internFieldSet(fields)
		cw.addSpec(a.pathIndex, fsIdx, SpecAttribute)
		// Attribute path tokens are NOT negated, unlike prims — readers
		// tell the two apart by Spec type, not by the sign of the token.
		cw.addPath(a.pathIndex, cw.internToken(a.Name), a.jump)
		return nil
	}
}

// writeQualifiers maps attribute qualifier strings ("uniform", "custom") to
// their USD metadata fields; any other qualifier is written as a bool field
// of the same name set to true.
func (cw *crateWriter) writeQualifiers(fields *[]int32, qualifiers []string) error {
	for _, q := range qualifiers {
		switch q {
		case "uniform":
			rep, err := cw.encodeValue(VariabilityValue(VariabilityUniform))
			if err != nil {
				return err
			}
			*fields = append(*fields, cw.internField(cw.internToken("variability"), rep))
		case "custom":
			rep, err := cw.encodeValue(BoolValue(true))
			if err != nil {
				return err
			}
			*fields = append(*fields, cw.internField(cw.internToken("custom"), rep))
		default:
			rep, err := cw.encodeValue(BoolValue(true))
			if err != nil {
				return err
			}
			*fields = append(*fields, cw.internField(cw.internToken(q), rep))
		}
	}
	return nil
}

// writeRoot emits the pseudo-root's own Spec/Path entries.
func (cw *crateWriter) writeRoot(root *Root) {
	var fields []int32
	if len(root.Children) > 0 {
		names := make([]string, len(root.Children))
		for i, c := range root.Children {
			names[i] = c.Name
		}
		rep, _ := cw.encodeValue(TokenVectorValue(names))
		fields = append(fields, cw.internField(cw.internToken("primChildren"), rep))
	}
	fsIdx := cw.internFieldSet(fields)
	cw.addSpec(0, fsIdx, SpecPseudoRoot)

	jump := int32(-2)
	if len(root.Children) > 0 {
		jump = -1
	}
	cw.addPath(0, 0, jump)
}

// writeCrate serializes a fully-built scene tree into a Crate file. Callers
// must have finished populating root before calling this.
func writeCrate(root *Root) ([]byte, error) {
	buildTree(root)

	cw := newCrateWriter()
	cw.writeRoot(root)
	for _, c := range root.Children {
		if err := cw.writePrim(c); err != nil {
			return nil, err
		}
	}

	out := newByteSink()
	out.writeBytes([]byte(crateMagic))
	out.writeU8(crateVersionMaj)
	out.writeU8(crateVersionMin)
	out.writeU8(crateVersionPatch)
	out.pad(5)
	tocOffsetPos := out.tell()
	out.writeU64(0) // patched below
	out.pad(crateBootstrapSize - int(out.tell()))

	out.writeBytes(cw.data.bytes())

	type tocEntry struct {
		name  string
		start int64
		size  int64
	}
	var entries []tocEntry

	start := out.tell()
	writeTokensSection(out, cw.tokens)
	entries = append(entries, tocEntry{"TOKENS", start, out.tell() - start})

	start = out.tell()
	writeStringsSection(out, cw.strings)
	entries = append(entries, tocEntry{"STRINGS", start, out.tell() - start})

	start = out.tell()
	writeFieldsSection(out, cw.fieldTokens, cw.fieldReps)
	entries = append(entries, tocEntry{"FIELDS", start, out.tell() - start})

	start = out.tell()
	writeIndexArraySection(out, cw.fieldSetsFlat, true)
	entries = append(entries, tocEntry{"FIELDSETS", start, out.tell() - start})

	start = out.tell()
	writePathsSection(out, cw.pathPathIdx, cw.pathTokenIdx, cw.pathJump)
	entries = append(entries, tocEntry{"PATHS", start, out.tell() - start})

	start = out.tell()
	writeSpecsSection(out, cw.specPathIdx, cw.specFieldSetIdx, cw.specType)
	entries = append(entries, tocEntry{"SPECS", start, out.tell() - start})

	tocStart := out.tell()
	out.writeU64(uint64(len(entries)))
	for _, e := range entries {
		nameBytes := make([]byte, crateTocNameSize)
		copy(nameBytes, e.name)
		out.writeBytes(nameBytes)
		out.writeU64(uint64(e.start))
		out.writeU64(uint64(e.size))
	}

	out.patchU64(tocOffsetPos, uint64(tocStart))

	return out.bytes(), nil
}

func writeTokensSection(out *byteSink, tokens []string) {
	raw := newByteSink()
	for _, t := range tokens {
		raw.writeBytes([]byte(t))
		raw.writeByte(0)
	}
	compressed := lz4CrateBlock(raw.bytes())
	out.writeU64(uint64(len(tokens)))
	out.writeU64(uint64(raw.tell()))
	out.writeU64(uint64(len(compressed)))
	out.writeBytes(compressed)
}

func writeStringsSection(out *byteSink, strs []int32) {
	out.writeU64(uint64(len(strs)))
	for _, s := range strs {
		out.writeI32(s)
	}
}

func writeFieldsSection(out *byteSink, fieldTokens []int32, fieldReps []uint64) {
	out.writeU64(uint64(len(fieldTokens)))

	encoded := usdIntEncode(fieldTokens)
	compressed := lz4CrateBlock(encoded)
	out.writeU64(uint64(len(compressed)))
	out.writeBytes(compressed)

	repBytes := newByteSink()
	for _, r := range fieldReps {
		repBytes.writeU64(r)
	}
	repCompressed := lz4CrateBlock(repBytes.bytes())
	out.writeU64(uint64(len(repCompressed)))
	out.writeBytes(repCompressed)
}

// writeIndexArraySection writes a generic "u64 count; LZ4+USD-int-coded i32
// array" section body (used for FIELDSETS with its count; PATHS/SPECS call
// it once per array with withCount=false, since they write their own count
// ahead of three arrays).
func writeIndexArraySection(out *byteSink, values []int32, withCount bool) {
	if withCount {
		out.writeU64(uint64(len(values)))
	}
	encoded := usdIntEncode(values)
	compressed := lz4CrateBlock(encoded)
	out.writeU64(uint64(len(compressed)))
	out.writeBytes(compressed)
}

func writePathsSection(out *byteSink, pathIdx, tokenIdx, jump []int32) {
	out.writeU64(uint64(len(pathIdx)))
	out.writeU64(uint64(len(pathIdx)))
	writeIndexArraySection(out, pathIdx, false)
	writeIndexArraySection(out, tokenIdx, false)
	writeIndexArraySection(out, jump, false)
}

func writeSpecsSection(out *byteSink, pathIdx, fieldSetIdx, specType []int32) {
	out.writeU64(uint64(len(pathIdx)))
	writeIndexArraySection(out, pathIdx, false)
	writeIndexArraySection(out, fieldSetIdx, false)
	writeIndexArraySection(out, specType, false)
}
