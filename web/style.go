package web

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; background: #f6f8fa; color: #24292f; }
.layout { max-width: 960px; margin: 0 auto; padding: 1rem; }
.card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 1rem; margin-bottom: 1rem; }
.banner { padding: .75rem 1rem; border-radius: 6px; margin-bottom: 1rem; }
.banner.info { background: #ddf4ff; border: 1px solid #54aeff; }
.banner.error { background: #ffebe9; border: 1px solid #ff8182; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .25rem .5rem; border-bottom: 1px solid #d0d7de; }
td.num { text-align: right; }
.bar-chart { display: flex; align-items: stretch; }
.axis-y { writing-mode: vertical-rl; transform: rotate(180deg); margin-right: .5rem; }
.axis-x { text-align: center; }
.bars { display: flex; align-items: flex-end; gap: 1rem; height: 300px; flex: 1; padding-bottom: 5rem; border-left: 1px solid #57606a; border-bottom: 1px solid #57606a; }
.bar-col { display: flex; flex-direction: column; justify-content: flex-end; align-items: center; height: 100%; flex: 1; position: relative; }
.bar { width: 100%; min-height: 1px; }
.bar-label { position: absolute; top: 100%; white-space: nowrap; transform: rotate(45deg); transform-origin: left top; margin-top: .25rem; }
.pie-chart { display: flex; gap: 2rem; align-items: center; }
.pie { width: 240px; height: 240px; border-radius: 50%; }
.legend { list-style: none; padding: 0; }
.legend li { margin: .25rem 0; cursor: default; }
.swatch { display: inline-block; width: .8rem; height: .8rem; margin-right: .5rem; border-radius: 2px; }
`
