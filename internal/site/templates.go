package site

// pageTemplate is the Go html/template for each exported page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.DocumentTitle}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="site-title">{{.SiteName}}</h2>
      <form id="search-form" autocomplete="off">
        <input type="text" id="search-input" placeholder="Search...">
      </form>
      <div class="search-notice" id="search-notice"></div>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <div class="top-bar">
      <ol class="breadcrumb">{{range .Breadcrumb}}<li>{{.}}</li>{{end}}</ol>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">Theme</button>
    </div>
    <article class="page-content">
      {{.Content}}
    </article>
    <footer class="page-meta">
      {{with .Metadata.LastUpdated}}<span>Last updated {{.}}</span>{{end}}
      {{with .Metadata.ReadingMinutes}}<span>{{.}} min read</span>{{end}}
    </footer>
  </main>
  <aside class="toc">
    <h3>Contents</h3>
    {{.TOC}}
  </aside>
  <script src="script.js"></script>
</body>
</html>`

// cssContent is the stylesheet for the exported site.
const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #656d76;
  --border: #d0d7de;
  --accent: #0969da;
  --sidebar-bg: #f6f8fa;
}
[data-theme="dark"] {
  --bg: #0d1117;
  --fg: #e6edf3;
  --muted: #8d96a0;
  --border: #30363d;
  --accent: #4493f8;
  --sidebar-bg: #161b22;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  display: grid;
  grid-template-columns: 260px minmax(0, 1fr) 220px;
  min-height: 100vh;
  background: var(--bg);
  color: var(--fg);
  font: 16px/1.6 -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
}
a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }
.sidebar { background: var(--sidebar-bg); border-right: 1px solid var(--border); padding: 1rem; }
.site-title { margin: 0 0 .75rem; font-size: 1.1rem; }
#search-input { width: 100%; padding: .4rem .6rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg); color: var(--fg); }
.search-notice { color: var(--muted); font-size: .85rem; margin-top: .4rem; }
.search-notice:empty { display: none; }
.sidebar-tree ul { list-style: none; margin: 0; padding-left: .9rem; }
.sidebar-tree > ul { padding-left: 0; }
.sidebar-tree li { margin: .2rem 0; }
.sidebar-tree a { color: var(--fg); }
.sidebar-tree a.active { color: var(--accent); font-weight: 600; }
.dir > ul { display: none; }
.dir.expanded > ul { display: block; }
.dir-toggle { cursor: pointer; font-weight: 600; }
.content { padding: 1.5rem 2.5rem; }
.top-bar { display: flex; justify-content: space-between; align-items: center; border-bottom: 1px solid var(--border); padding-bottom: .5rem; }
.breadcrumb { display: flex; list-style: none; margin: 0; padding: 0; color: var(--muted); }
.breadcrumb li + li::before { content: "/"; padding: 0 .5rem; }
.theme-toggle { border: 1px solid var(--border); background: var(--bg); color: var(--fg); border-radius: 6px; padding: .3rem .7rem; cursor: pointer; }
.page-content code { background: var(--sidebar-bg); padding: .1rem .3rem; border-radius: 4px; }
.page-meta { border-top: 1px solid var(--border); margin-top: 2rem; padding-top: .5rem; color: var(--muted); font-size: .85rem; display: flex; gap: 1.5rem; }
.toc { padding: 1.5rem 1rem; border-left: 1px solid var(--border); font-size: .9rem; }
.toc h3 { margin-top: 0; font-size: .9rem; text-transform: uppercase; color: var(--muted); }
.toc ul { list-style: none; padding: 0; margin: 0; }
.toc li { margin: .25rem 0; }
.toc .toc-level-3, .toc .toc-level-4, .toc .toc-level-5, .toc .toc-level-6 { padding-left: 1rem; }
@media (max-width: 900px) {
  body { grid-template-columns: 1fr; }
  .toc { display: none; }
}
`

// jsContent drives theme switching, section toggles and client-side search.
const jsContent = `(function() {
  var root = document.documentElement;
  var stored = localStorage.getItem("pageshell-theme");
  if (stored) root.setAttribute("data-theme", stored);

  document.getElementById("theme-toggle").addEventListener("click", function() {
    var next = root.getAttribute("data-theme") === "dark" ? "light" : "dark";
    root.setAttribute("data-theme", next);
    localStorage.setItem("pageshell-theme", next);
  });

  document.querySelectorAll(".dir-toggle").forEach(function(el) {
    el.addEventListener("click", function() {
      el.parentElement.classList.toggle("expanded");
    });
  });

  var index = null;
  function loadIndex() {
    if (index) return Promise.resolve(index);
    return fetch("search-index.json").then(function(r) { return r.json(); }).then(function(data) {
      index = data || [];
      return index;
    });
  }

  var notice = document.getElementById("search-notice");
  document.getElementById("search-form").addEventListener("submit", function(e) {
    e.preventDefault();
    var query = document.getElementById("search-input").value.trim();
    notice.textContent = "";
    if (!query) return;
    loadIndex().then(function(entries) {
      for (var i = 0; i < entries.length; i++) {
        if (entries[i].title.indexOf(query) !== -1 || entries[i].body.indexOf(query) !== -1) {
          window.location.href = entries[i].path;
          return;
        }
      }
      notice.textContent = "No results found for \"" + query + "\". Try another keyword.";
    });
  });
})();
`
