// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

// pageHead is formatted with the page title.
const pageHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font: 12px sans-serif; margin: 1em; }
#count { color: #555; }
</style>
</head>
<body>
<p><a href="selected.tsv">selected.tsv</a> · <a href="summary">summary</a> · <a href="#" id="reset">reset</a></p>
`

// pageTail holds the drag script. A drag on an axis posts a brushpx
// event with the drag's endpoints in axis coordinates; a click
// without movement clears that axis.
const pageTail = `<script>
"use strict";
const chart = document.getElementById("chart");
const count = document.getElementById("count");

function show(st) {
  count.textContent = st.selected + " of " + st.total + " rows selected";
  return fetch("chart.svg?interactive=1")
    .then(r => r.text())
    .then(t => { chart.innerHTML = t; bind(); });
}

function send(method, url, body) {
  const init = {method: method, headers: {"Content-Type": "application/json"}};
  if (body) init.body = JSON.stringify(body);
  return fetch(url, init).then(r => r.json()).then(show);
}

function bind() {
  chart.querySelectorAll("rect.overlay").forEach(r => {
    r.addEventListener("mousedown", down => {
      down.preventDefault();
      const key = r.dataset.key;
      const m = r.getScreenCTM().inverse();
      const y = e => new DOMPoint(e.clientX, e.clientY).matrixTransform(m).y;
      const y0 = y(down);
      send("POST", "events", {type: "start", key: key});
      const up = e => {
        window.removeEventListener("mouseup", up);
        const y1 = y(e);
        if (Math.abs(y1 - y0) < 1) {
          send("POST", "events", {type: "clear", key: key});
        } else {
          send("POST", "events", {type: "brushpx", key: key, y0: y0, y1: y1});
        }
      };
      window.addEventListener("mouseup", up);
    });
  });
}

document.getElementById("reset").addEventListener("click", e => {
  e.preventDefault();
  send("DELETE", "brushes");
});
bind();
</script>
</body>
</html>
`
