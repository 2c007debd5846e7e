package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies a cached resource structurally: a name plus the parameters
// the resource was fetched with. ("blogPosts", true) and ("blogPosts", false)
// are distinct keys, as are ("item", 1) and ("item", "1").
type Key struct {
	name   string
	params []string
}

func NewKey(name string, params ...interface{}) Key {
	k := Key{name: name, params: make([]string, len(params))}
	for i, p := range params {
		k.params[i] = encodeParam(p)
	}
	return k
}

func (k Key) Name() string { return k.name }

func (k Key) String() string {
	if len(k.params) == 0 {
		return strconv.Quote(k.name)
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strconv.Quote(k.name))
	for _, p := range k.params {
		b.WriteByte(',')
		b.WriteString(p)
	}
	b.WriteByte(']')
	return b.String()
}

func encodeParam(p interface{}) string {
	switch v := p.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return strconv.Quote(v.String())
	default:
		return fmt.Sprintf("%T(%v)", v, v)
	}
}
