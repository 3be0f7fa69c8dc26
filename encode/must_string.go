package encode

import (
	"bytes"

	"github.com/signadot/dawm/dom"
)

func MustString(n dom.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(n, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
