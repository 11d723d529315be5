package datatable

import "html/template"

// tableCSS is emitted per table instance so the
// interactive table is self-contained display output.
const tableCSS template.HTML = `<style>
    .nbtable-data {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      font-size: 13px;
    }

    .nbtable-data-caption {
      font-weight: 600;
      margin-bottom: 4px;
    }

    .nbtable-data-filter input {
      border: 1px solid #dadce0;
      border-radius: 4px;
      margin-bottom: 6px;
      padding: 4px 8px;
    }

    .nbtable-data table {
      border-collapse: collapse;
    }

    .nbtable-data th,
    .nbtable-data td {
      border-bottom: 1px solid #dadce0;
      padding: 4px 10px;
      text-align: left;
      white-space: nowrap;
    }

    .nbtable-data th {
      cursor: pointer;
      user-select: none;
    }

    .nbtable-data th:hover {
      color: #1967D2;
    }

    .nbtable-data td.nbtable-data-number {
      text-align: right;
    }

    .nbtable-data-pager {
      color: #5f6368;
      margin-top: 6px;
    }

    .nbtable-data-pager button {
      background: none;
      border: 1px solid #dadce0;
      border-radius: 4px;
      cursor: pointer;
      margin-right: 4px;
      padding: 2px 8px;
    }

    .nbtable-data-pager button:disabled {
      cursor: default;
      opacity: 0.4;
    }

    .nbtable-data-notice {
      color: #5f6368;
      font-style: italic;
      margin-top: 4px;
    }

    [theme=dark] .nbtable-data th,
    [theme=dark] .nbtable-data td,
    [theme=dark] .nbtable-data-filter input,
    [theme=dark] .nbtable-data-pager button {
      border-color: #3B4455;
    }
  </style>`

var tableTemplate = template.Must(template.New("datatable").Parse(`<div id="{{.ID}}" class="nbtable-data{{if .TableClass}} {{.TableClass}}{{end}}">
{{if .Caption}}  <div class="nbtable-data-caption">{{.Caption}}</div>
{{end}}  {{.CSS}}
  <div class="nbtable-data-filter"><input type="text" placeholder="Filter rows"></div>
  <table></table>
  <div class="nbtable-data-pager"></div>
{{if .Notice}}  <div class="nbtable-data-notice">{{.Notice}}</div>
{{end}}  <script>
    (() => {
      const root = document.getElementById('{{.ID}}');
      const data = {{.Payload}};
      const table = root.querySelector('table');
      const pager = root.querySelector('.nbtable-data-pager');
      const filter = root.querySelector('input');
      const state = {sortCol: -1, sortDir: 1, filter: '', page: 0};

      function visibleRows() {
        let rows = data.rows;
        if (state.filter) {
          const needle = state.filter.toLowerCase();
          rows = rows.filter(row =>
            row.some(value => String(value).toLowerCase().includes(needle)));
        }
        if (state.sortCol >= 0) {
          const col = state.sortCol;
          const dir = state.sortDir;
          rows = rows.slice().sort((a, b) => {
            const x = a[col];
            const y = b[col];
            if (x === y) return 0;
            if (x === null) return dir;
            if (y === null) return -dir;
            return x < y ? -dir : dir;
          });
        }
        return rows;
      }

      function cellText(value) {
        return value === null ? '' : String(value);
      }

      function render() {
        const rows = visibleRows();
        const pages = Math.max(1, Math.ceil(rows.length / data.pageSize));
        if (state.page >= pages) state.page = pages - 1;
        const start = state.page * data.pageSize;
        const pageRows = rows.slice(start, start + data.pageSize);

        const thead = document.createElement('thead');
        const headRow = document.createElement('tr');
        data.columns.forEach((column, col) => {
          const th = document.createElement('th');
          th.textContent = column.title +
            (state.sortCol === col ? (state.sortDir > 0 ? ' ▴' : ' ▾') : '');
          th.onclick = () => {
            state.sortDir = state.sortCol === col ? -state.sortDir : 1;
            state.sortCol = col;
            render();
          };
          headRow.appendChild(th);
        });
        thead.appendChild(headRow);

        const tbody = document.createElement('tbody');
        pageRows.forEach(row => {
          const tr = document.createElement('tr');
          row.forEach((value, col) => {
            const td = document.createElement('td');
            td.textContent = cellText(value);
            if (data.columns[col].type === 'number') {
              td.className = 'nbtable-data-number';
            }
            tr.appendChild(td);
          });
          tbody.appendChild(tr);
        });

        table.replaceChildren(thead, tbody);

        pager.replaceChildren();
        if (pages > 1) {
          const prev = document.createElement('button');
          prev.textContent = '‹';
          prev.disabled = state.page === 0;
          prev.onclick = () => { state.page--; render(); };
          const next = document.createElement('button');
          next.textContent = '›';
          next.disabled = state.page >= pages - 1;
          next.onclick = () => { state.page++; render(); };
          const label = document.createTextNode(
            'Page ' + (state.page + 1) + ' of ' + pages + ' (' + rows.length + ' rows)');
          pager.append(prev, next, label);
        }
      }

      filter.oninput = () => {
        state.filter = filter.value;
        state.page = 0;
        render();
      };

      render();
    })();
  </script>
</div>
`))

type tableTemplateContext struct {
	ID         string
	TableClass string
	Caption    string
	Notice     string
	CSS        template.HTML
	Payload    template.JS
}
