package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Format serializes a Document to and from its textual or binary form.
type Format interface {
	// Name is the configuration name of the format.
	Name() string
	// Ext is the file extension, without a leading dot.
	Ext() string
	Marshal(doc Document) ([]byte, error)
	Unmarshal(data []byte) (Document, error)
}

// Format names accepted in Config.Format.
const (
	FormatJSON     = "json"
	FormatProtobuf = "protobuf"
)

var formats = map[string]Format{
	FormatJSON:     jsonFormat{},
	FormatProtobuf: protoFormat{},
}

// GetFormat returns a built-in Format by name.
func GetFormat(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return f, nil
}

// jsonFormat stores a flat object whose values are all strings.
type jsonFormat struct{}

func (jsonFormat) Name() string { return FormatJSON }
func (jsonFormat) Ext() string  { return "json" }

func (jsonFormat) Marshal(doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	return json.Marshal(map[string]string(doc))
}

func (jsonFormat) Unmarshal(data []byte) (Document, error) {
	doc := Document{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: field %q holds %s", ErrNonStringValue, typeErr.Field, typeErr.Value)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		// A literal "null" document.
		doc = Document{}
	}
	return doc, nil
}

// protoFormat stores a google.protobuf.Struct whose values are all strings.
type protoFormat struct{}

func (protoFormat) Name() string { return FormatProtobuf }
func (protoFormat) Ext() string  { return "pb" }

func (protoFormat) Marshal(doc Document) ([]byte, error) {
	fields := make(map[string]*structpb.Value, len(doc))
	for k, v := range doc {
		fields[k] = structpb.NewStringValue(v)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(&structpb.Struct{Fields: fields})
}

func (protoFormat) Unmarshal(data []byte) (Document, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc := make(Document, len(st.GetFields()))
	for k, v := range st.GetFields() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: field %q", ErrNonStringValue, k)
		}
		doc[k] = s.StringValue
	}
	return doc, nil
}
