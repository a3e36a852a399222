package layout

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

const svgStyle = `.edge{fill:none;stroke-width:3}` +
	`.commit-node{stroke:#1f2937;stroke-width:2;cursor:pointer}` +
	`.commit-node.selected{stroke:#f97316;stroke-width:4}` +
	`.commit-id{font:10px monospace;fill:#111827;pointer-events:none}` +
	`.label{font:12px sans-serif;fill:#f9fafb}` +
	`.branch-tag{fill:#374151}`

// WriteSVG renders l as a standalone SVG document. Edges are drawn first so
// nodes sit on top of them.
func WriteSVG(w io.Writer, l *Layout) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(bw, "<style>%s</style>\n", svgStyle)

	for _, e := range l.Edges {
		fmt.Fprintf(bw, `<path class="edge" d="%s" stroke="%s" data-from="%s" data-to="%s"/>`+"\n",
			e.Path, attr(e.Color), attr(e.From), attr(e.To))
	}

	for _, n := range l.Nodes {
		class := "commit-node"
		if n.Selected {
			class += " selected"
		}
		fmt.Fprintf(bw, `<circle class="%s" cx="%d" cy="%d" r="%d" fill="%s" data-id="%s"><title>%s</title></circle>`+"\n",
			class, n.X, n.Y, NodeRadius, attr(n.Color), attr(n.ID), html.EscapeString(n.Message))
		fmt.Fprintf(bw, `<text class="commit-id" x="%d" y="%d" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			n.X, n.Y, html.EscapeString(n.ID))
	}

	for _, lb := range l.Labels {
		// No text metrics here, so the tag width is estimated per rune.
		width := len([]rune(lb.Text))*7 + 20
		fmt.Fprintf(bw, `<rect class="branch-tag" x="%d" y="%d" rx="10" ry="10" width="%d" height="24"/>`+"\n",
			lb.X-10, lb.Y-17, width)
		fmt.Fprintf(bw, `<text class="label" x="%d" y="%d">%s</text>`+"\n",
			lb.X, lb.Y, html.EscapeString(lb.Text))
	}

	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

func attr(s string) string {
	return html.EscapeString(s)
}
