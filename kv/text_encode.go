package kv

import (
	"bufio"
	"io"
	"strings"
)

var textEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

// EncodeText writes n in the text dialect with tab indentation. An unnamed
// object (as returned by the decoders) is written as its children only.
func EncodeText(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	if n.IsObject() && n.Key == "" {
		for _, c := range n.children {
			writeTextNode(bw, c, 0)
		}
	} else {
		writeTextNode(bw, n, 0)
	}
	return bw.Flush()
}

func writeTextNode(w *bufio.Writer, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	w.WriteString(indent)
	w.WriteString(`"` + textEscaper.Replace(n.Key) + `"`)
	if n.IsString() {
		w.WriteString("\t\t\"" + textEscaper.Replace(n.value) + "\"\n")
		return
	}
	w.WriteString("\n" + indent + "{\n")
	for _, c := range n.children {
		writeTextNode(w, c, depth+1)
	}
	w.WriteString(indent + "}\n")
}
