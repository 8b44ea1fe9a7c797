package sparse

import (
	"math"
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

type jsonScope struct {
	object  jwriter.ObjectState
	array   jwriter.ArrayState
	isArray bool
}

// jsonVisitor writes a walked page table as nested JSON objects and arrays
type jsonVisitor struct {
	writer *jwriter.Writer
	stack  []jsonScope
}

var _ Visitor = &jsonVisitor{}

func (v *jsonVisitor) top() *jsonScope {
	return &v.stack[len(v.stack)-1]
}

// value returns the writer positioned for the next named field. Values are only written inside
// objects.
func (v *jsonVisitor) value(name string) *jwriter.Writer {
	return v.top().object.Name(name)
}

func (v *jsonVisitor) BeginStruct(name string) {
	var obj jwriter.ObjectState
	switch {
	case len(v.stack) == 0:
		obj = v.writer.Object()
	case v.top().isArray:
		obj = v.top().array.Object()
	default:
		obj = v.value(name).Object()
	}
	v.stack = append(v.stack, jsonScope{object: obj})
}

func (v *jsonVisitor) EndStruct() {
	v.top().object.End()
	v.stack = v.stack[:len(v.stack)-1]
}

func (v *jsonVisitor) BeginArray(name string, length int) {
	v.stack = append(v.stack, jsonScope{array: v.value(name).Array(), isArray: true})
}

func (v *jsonVisitor) EndArray() {
	v.top().array.End()
	v.stack = v.stack[:len(v.stack)-1]
}

func (v *jsonVisitor) Uint32(name string, value uint32) {
	v.value(name).Int(int(value))
}

// writeUint64 writes values that do not fit in an int as decimal strings
func writeUint64(writer *jwriter.Writer, value uint64) {
	if value > math.MaxInt {
		writer.String(strconv.FormatUint(value, 10))
		return
	}
	writer.Int(int(value))
}

func (v *jsonVisitor) Uint64(name string, value uint64) {
	writeUint64(v.value(name), value)
}

func (v *jsonVisitor) OffsetOrSize(name string, value uint64) {
	writeUint64(v.value(name), value)
}

func (v *jsonVisitor) Bool(name string, value bool) {
	v.value(name).Bool(value)
}

func (v *jsonVisitor) ResourceId(name string, value ResourceId) {
	v.value(name).String(value.String())
}

// PrintDetailedMap writes the table's full binding state and summary statistics as a JSON object
func (t *PageTable) PrintDetailedMap(writer *jwriter.Writer) {
	visitor := &jsonVisitor{writer: writer}
	visitor.BeginStruct("")
	defer visitor.EndStruct()

	t.Serialise("PageTable", visitor)

	var stats Statistics
	t.AddStatistics(&stats)

	statsObj := visitor.value("Statistics").Object()
	defer statsObj.End()

	statsObj.Name("Mappings").Int(stats.MappingCount)
	statsObj.Name("ExpandedMappings").Int(stats.ExpandedMappingCount)
	statsObj.Name("Pages").Int(stats.PageCount)
	statsObj.Name("MappedPages").Int(stats.MappedPageCount)
	statsObj.Name("ExpandedPages").Int(stats.ExpandedPageCount)
	writeUint64(statsObj.Name("SerialiseSize"), t.SerialiseSize())
}
