package encode

type EncodeOption func(*EncState)

// EncodeXML forces XML syntax, even for nodes of an HTML document.
func EncodeXML(v bool) EncodeOption {
	return func(es *EncState) { es.xml = v }
}

// EncodeInner writes only the children of the given node.
func EncodeInner(v bool) EncodeOption {
	return func(es *EncState) { es.inner = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
