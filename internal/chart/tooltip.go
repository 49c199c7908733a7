package chart

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// TooltipHandlers configures the hover behavior of heatmap cells.
//
// Each handler in the generated script is a plain function taking the tooltip
// element, the hovered record, and the pointer event; no state is shared
// between handlers apart from the tooltip element itself.
type TooltipHandlers struct {
	FadeIn        time.Duration
	FadeOut       time.Duration
	OffsetX       int
	OffsetY       int
	FollowPointer bool
	CountLabel    string
}

// DefaultTooltip fades in over 200ms, out over 500ms, and follows the pointer.
func DefaultTooltip(layout Layout) TooltipHandlers {
	return TooltipHandlers{
		FadeIn:        200 * time.Millisecond,
		FadeOut:       500 * time.Millisecond,
		OffsetX:       10,
		OffsetY:       -28,
		FollowPointer: true,
		CountLabel:    layout.CountLabel,
	}
}

// Element is the floating tooltip container, hidden until hover.
func (t TooltipHandlers) Element() *html.Node {
	return el("div", "class", "tooltip", "style", "opacity: 0")
}

// Script wires the handlers to every cell inside the chart container.
func (t TooltipHandlers) Script() *html.Node {
	label, _ := json.Marshal(t.CountLabel)

	var events strings.Builder
	events.WriteString(`    cell.addEventListener("mouseover", function (evt) { mouseover(tooltip, record(cell), evt); });` + "\n")
	if t.FollowPointer {
		events.WriteString(`    cell.addEventListener("mousemove", function (evt) { mousemove(tooltip, record(cell), evt); });` + "\n")
	}
	events.WriteString(`    cell.addEventListener("mouseleave", function (evt) { mouseleave(tooltip, record(cell), evt); });` + "\n")

	src := fmt.Sprintf(`
(function () {
  var container = document.getElementById(%[1]q);
  if (!container) { return; }
  var tooltip = container.querySelector(".tooltip");
  function record(cell) {
    return { year: cell.dataset.year, season: cell.dataset.season, count: Number(cell.dataset.count) };
  }
  function place(tip, evt) {
    tip.style.left = (evt.layerX + %[2]d) + "px";
    tip.style.top = (evt.layerY + %[3]d) + "px";
  }
  function mouseover(tip, d, evt) {
    tip.style.transition = "opacity %[4]dms";
    tip.style.opacity = 1;
    tip.textContent = "";
    var count = document.createElement("div");
    count.className = "tooltip-count";
    count.textContent = %[6]s + ": " + d.count;
    var year = document.createElement("div");
    year.textContent = d.year;
    tip.appendChild(count);
    tip.appendChild(year);
    place(tip, evt);
  }
  function mousemove(tip, d, evt) {
    place(tip, evt);
  }
  function mouseleave(tip, d, evt) {
    tip.style.transition = "opacity %[5]dms";
    tip.style.opacity = 0;
  }
  container.querySelectorAll("rect.cell").forEach(function (cell) {
%[7]s  });
})();
`, ChartMountID, t.OffsetX, t.OffsetY, t.FadeIn.Milliseconds(), t.FadeOut.Milliseconds(), label, events.String())

	return textEl("script", src)
}
