// Package nexml reads and writes the NeXML interchange format for the
// object model in pkg/model. The wire shape is declared twice: outbound
// structs carry the literal nex:/xsi: prefixes the format uses, inbound
// structs match by local name so namespaced and plain documents both parse.
package nexml

import "encoding/xml"

const (
	nexNamespace = "http://www.nexml.org/1.0"
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

	typeIntTree      = "nex:IntTree"
	typeFloatTree    = "nex:FloatTree"
	typeIntNetwork   = "nex:IntNetwork"
	typeFloatNetwork = "nex:FloatNetwork"
	typeLiteralMeta  = "nex:LiteralMeta"
)

// Outbound wire shape.

type outNexml struct {
	XMLName xml.Name   `xml:"nex:nexml"`
	Version string     `xml:"version,attr"`
	NexNS   string     `xml:"xmlns:nex,attr"`
	XsiNS   string     `xml:"xmlns:xsi,attr"`
	Otus    []outOtus  `xml:"otus"`
	Trees   []outTrees `xml:"trees"`
}

type outMeta struct {
	XSIType  string `xml:"xsi:type,attr"`
	Property string `xml:"property,attr"`
	Datatype string `xml:"datatype,attr"`
	Content  string `xml:"content,attr"`
}

type outOtus struct {
	ID    string    `xml:"id,attr"`
	Label string    `xml:"label,attr,omitempty"`
	Meta  []outMeta `xml:"meta"`
	OTU   []outOtu  `xml:"otu"`
}

type outOtu struct {
	ID    string    `xml:"id,attr"`
	Label string    `xml:"label,attr,omitempty"`
	Meta  []outMeta `xml:"meta"`
}

type outTrees struct {
	ID      string       `xml:"id,attr"`
	Label   string       `xml:"label,attr,omitempty"`
	OtusRef string       `xml:"otus,attr"`
	Meta    []outMeta    `xml:"meta"`
	Tree    []outTree    `xml:"tree"`
	Network []outNetwork `xml:"network"`
}

type outTree struct {
	XSIType  string       `xml:"xsi:type,attr"`
	ID       string       `xml:"id,attr"`
	Label    string       `xml:"label,attr,omitempty"`
	Meta     []outMeta    `xml:"meta"`
	Node     []outNode    `xml:"node"`
	RootEdge *outRootEdge `xml:"rootedge"`
	Edge     []outEdge    `xml:"edge"`
}

type outNetwork struct {
	XSIType string    `xml:"xsi:type,attr"`
	ID      string    `xml:"id,attr"`
	Label   string    `xml:"label,attr,omitempty"`
	Meta    []outMeta `xml:"meta"`
	Node    []outNode `xml:"node"`
	Edge    []outEdge `xml:"edge"`
}

type outNode struct {
	ID    string    `xml:"id,attr"`
	Label string    `xml:"label,attr,omitempty"`
	Otu   string    `xml:"otu,attr,omitempty"`
	Meta  []outMeta `xml:"meta"`
}

type outEdge struct {
	ID     string    `xml:"id,attr"`
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Length string    `xml:"length,attr,omitempty"`
	Meta   []outMeta `xml:"meta"`
}

type outRootEdge struct {
	ID     string    `xml:"id,attr"`
	Target string    `xml:"target,attr"`
	Length string    `xml:"length,attr,omitempty"`
	Meta   []outMeta `xml:"meta"`
}

// Inbound wire shape. No XMLName on the root: the decoder accepts the
// document element whatever its prefix is.

type inNexml struct {
	Otus       []inOtus  `xml:"otus"`
	Trees      []inTrees `xml:"trees"`
	Characters []inSkip  `xml:"characters"`
}

// inSkip captures just enough of an ignored element to report it.
type inSkip struct {
	ID string `xml:"id,attr"`
}

type inMeta struct {
	Property string `xml:"property,attr"`
	Datatype string `xml:"datatype,attr"`
	Content  string `xml:"content,attr"`
}

type inOtus struct {
	ID    string   `xml:"id,attr"`
	Label string   `xml:"label,attr"`
	Meta  []inMeta `xml:"meta"`
	OTU   []inOtu  `xml:"otu"`
}

type inOtu struct {
	ID    string   `xml:"id,attr"`
	Label string   `xml:"label,attr"`
	Meta  []inMeta `xml:"meta"`
}

type inTrees struct {
	ID      string      `xml:"id,attr"`
	Label   string      `xml:"label,attr"`
	OtusRef string      `xml:"otus,attr"`
	Meta    []inMeta  `xml:"meta"`
	Tree    []inGraph `xml:"tree"`
	Network []inGraph `xml:"network"`
}

type inGraph struct {
	Type     string      `xml:"type,attr"`
	ID       string      `xml:"id,attr"`
	Label    string      `xml:"label,attr"`
	Meta     []inMeta    `xml:"meta"`
	Node     []inNode    `xml:"node"`
	Edge     []inEdge    `xml:"edge"`
	RootEdge *inRootEdge `xml:"rootedge"`
}

type inNode struct {
	ID    string   `xml:"id,attr"`
	Label string   `xml:"label,attr"`
	Otu   string   `xml:"otu,attr"`
	Meta  []inMeta `xml:"meta"`
}

type inEdge struct {
	ID     string   `xml:"id,attr"`
	Source string   `xml:"source,attr"`
	Target string   `xml:"target,attr"`
	Length string   `xml:"length,attr"`
	Meta   []inMeta `xml:"meta"`
}

type inRootEdge struct {
	ID     string   `xml:"id,attr"`
	Target string   `xml:"target,attr"`
	Length string   `xml:"length,attr"`
	Meta   []inMeta `xml:"meta"`
}
