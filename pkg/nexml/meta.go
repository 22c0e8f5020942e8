package nexml

import (
	"fmt"
	"strconv"

	"github.com/phylograph/nexml/pkg/model"
)

// Annotation values cross the wire as LiteralMeta elements with an xsd
// datatype discriminator. Unknown Go types degrade to strings.

func metaFromAnnotation(a model.Annotation) outMeta {
	m := outMeta{
		XSIType:  typeLiteralMeta,
		Property: a.Property,
	}
	switch v := a.Value.(type) {
	case string:
		m.Datatype = "xsd:string"
		m.Content = v
	case bool:
		m.Datatype = "xsd:boolean"
		m.Content = strconv.FormatBool(v)
	case int:
		m.Datatype = "xsd:integer"
		m.Content = strconv.FormatInt(int64(v), 10)
	case int64:
		m.Datatype = "xsd:integer"
		m.Content = strconv.FormatInt(v, 10)
	case float64:
		m.Datatype = "xsd:double"
		m.Content = strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		m.Datatype = "xsd:double"
		m.Content = strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		m.Datatype = "xsd:string"
		m.Content = fmt.Sprintf("%v", v)
	}
	return m
}

func metasFor(a model.Annotatable) []outMeta {
	annotations := a.Annotations()
	if len(annotations) == 0 {
		return nil
	}
	metas := make([]outMeta, len(annotations))
	for i, an := range annotations {
		metas[i] = metaFromAnnotation(an)
	}
	return metas
}

func annotationValue(m inMeta) any {
	switch m.Datatype {
	case "xsd:integer", "xsd:int", "xsd:long":
		if v, err := strconv.ParseInt(m.Content, 10, 64); err == nil {
			return v
		}
	case "xsd:double", "xsd:float", "xsd:decimal":
		if v, err := strconv.ParseFloat(m.Content, 64); err == nil {
			return v
		}
	case "xsd:boolean":
		if v, err := strconv.ParseBool(m.Content); err == nil {
			return v
		}
	}
	return m.Content
}

func applyMetas(target model.Annotatable, metas []inMeta) {
	for _, m := range metas {
		if m.Property == "" {
			continue
		}
		target.AddAnnotationValue(m.Property, annotationValue(m))
	}
}
