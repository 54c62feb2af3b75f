package pxg

import "strconv"

const svgClose = "</svg>"

// rectBytesEstimate bounds the emitted text of one rectangle element at
// MaxDimension coordinates. The output buffer is sized from it so the hot
// append loop never reallocates.
const rectBytesEstimate = 64

// headerBytesEstimate covers the document wrapper and closing tag.
const headerBytesEstimate = 160

// RenderDocument decodes data and renders it as a self-contained SVG
// document. With validate set, the input is fully validated before any
// rendering work begins and the call fails fast on the first violated
// invariant. Without it, no semantic validation is performed and the
// output is undefined if the data violates format invariants; this path
// trusts the caller completely and exists for data already validated
// elsewhere.
func RenderDocument(data []byte, validate bool) (string, error) {
	ctx, err := decode(data, validate)
	if err != nil {
		return "", err
	}
	return ctx.RenderDocument(), nil
}

// RenderFragment is RenderDocument without the document wrapper: it
// renders only the rectangle elements.
func RenderFragment(data []byte, validate bool) (string, error) {
	ctx, err := decode(data, validate)
	if err != nil {
		return "", err
	}
	return ctx.RenderFragment(), nil
}

// RenderDocument renders the decoded image as a self-contained SVG
// document.
func (ctx *RenderContext) RenderDocument() string {
	return string(ctx.appendSVG(true))
}

// RenderFragment renders only the rectangle elements, with no document
// wrapper.
func (ctx *RenderContext) RenderFragment() string {
	return string(ctx.appendSVG(false))
}

// appendSVG runs the render state machine: wrapper, optional background,
// scan/merge loop, closing tag. One linear pass, no re-entry.
func (ctx *RenderContext) appendSVG(document bool) []byte {
	h := ctx.Header
	num := ctx.numbers()
	buf := make([]byte, 0, h.TotalPixels*rectBytesEstimate+headerBytesEstimate)

	if document {
		scale := h.EffectiveScale()
		buf = append(buf, `<svg xmlns="http://www.w3.org/2000/svg" shape-rendering="crispEdges" width="`...)
		buf = strconv.AppendInt(buf, int64(h.Width*scale), 10)
		buf = append(buf, `" height="`...)
		buf = strconv.AppendInt(buf, int64(h.Height*scale), 10)
		buf = append(buf, `" viewBox="0 0 `...)
		buf = append(buf, num[h.Width]...)
		buf = append(buf, ' ')
		buf = append(buf, num[h.Height]...)
		buf = append(buf, `">`...)
	}

	if h.HasBackground {
		buf = appendBackground(buf, ctx.Palette[h.BackgroundIndex], num[h.Width], num[h.Height])
	}

	width := h.Width
	pixels := ctx.Pixels
	skipBackground := h.HasBackground
	background := uint8(h.BackgroundIndex)

	for p := 0; p < len(pixels); {
		color := pixels[p]
		if skipBackground && color == background {
			// Already painted by the background fill. Advancing one pixel
			// is cheaper than expanding a run that emits nothing.
			p++
			continue
		}
		rowEnd := p - p%width + width
		run := 1
		for p+run < rowEnd && pixels[p+run] == color {
			run++
		}
		buf = appendRect(buf, ctx.Palette[color], num[p%width], num[p/width], num[run])
		p += run
	}

	if document {
		buf = append(buf, svgClose...)
	}
	return buf
}

// appendRect emits one single-row rectangle using cached attribute text.
func appendRect(buf []byte, color, x, y, width string) []byte {
	buf = append(buf, `<rect fill="#`...)
	buf = append(buf, color...)
	buf = append(buf, `" x="`...)
	buf = append(buf, x...)
	buf = append(buf, `" y="`...)
	buf = append(buf, y...)
	buf = append(buf, `" width="`...)
	buf = append(buf, width...)
	buf = append(buf, `" height="1"/>`...)
	return buf
}

// appendBackground emits the full-canvas background rectangle.
func appendBackground(buf []byte, color, width, height string) []byte {
	buf = append(buf, `<rect fill="#`...)
	buf = append(buf, color...)
	buf = append(buf, `" x="0" y="0" width="`...)
	buf = append(buf, width...)
	buf = append(buf, `" height="`...)
	buf = append(buf, height...)
	buf = append(buf, `"/>`...)
	return buf
}

// numbers returns the decimal text of every integer 0..max(width,height)
// inclusive, built once per context. Rectangle coordinates and run widths
// all fall in that range, so the hot loop never formats an integer.
func (ctx *RenderContext) numbers() []string {
	if ctx.numText != nil {
		return ctx.numText
	}
	max := ctx.Header.Width
	if ctx.Header.Height > max {
		max = ctx.Header.Height
	}
	t := make([]string, max+1)
	for i := range t {
		t[i] = strconv.Itoa(i)
	}
	ctx.numText = t
	return t
}
