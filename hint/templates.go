package hint

import "html/template"

// Bridge names the client-side JavaScript objects and the kernel
// callback that the emitted script uses to talk to the host runtime.
type Bridge struct {
	// KernelObject is the JavaScript object path exposing
	// accessAllowed and invokeFunction(name, args, options).
	KernelObject string
	// OutputObject is the JavaScript object path exposing
	// renderOutput(output, element).
	OutputObject string
	// CallbackName is the name the conversion callback
	// is registered under on the kernel side.
	CallbackName string
}

// DefaultBridge works with frontends exposing the
// bridge API under the global notebook object.
var DefaultBridge = Bridge{
	KernelObject: "notebook.kernel",
	OutputObject: "notebook.output",
	CallbackName: "convertToInteractive",
}

const iconSVG template.HTML = `<svg xmlns="http://www.w3.org/2000/svg" height="24px" viewBox="0 -960 960 960">
    <path d="M120-120v-720h720v720H120Zm60-500h600v-160H180v160Zm220 220h160v-160H400v160Zm0 220h160v-160H400v160ZM180-400h160v-160H180v160Zm440 0h160v-160H620v160ZM180-180h160v-160H180v160Zm440 0h160v-160H620v160Z"/>
  </svg>`

const hintButtonCSS template.HTML = `<style>
    .nbtable-container {
      display: flex;
      gap: 12px;
    }

    .nbtable-convert {
      background-color: #E8F0FE;
      border: none;
      border-radius: 50%;
      cursor: pointer;
      display: none;
      fill: #1967D2;
      height: 32px;
      padding: 0;
      width: 32px;
    }

    .nbtable-convert:hover {
      background-color: #E2EBFA;
      box-shadow: 0px 1px 2px rgba(60, 64, 67, 0.3), 0px 1px 3px 1px rgba(60, 64, 67, 0.15);
      fill: #174EA6;
    }

    .nbtable-buttons div {
      margin-bottom: 4px;
    }

    [theme=dark] .nbtable-convert {
      background-color: #3B4455;
      fill: #D2E3FC;
    }

    [theme=dark] .nbtable-convert:hover {
      background-color: #434B5C;
      box-shadow: 0px 1px 3px 1px rgba(0, 0, 0, 0.15);
      filter: drop-shadow(0px 1px 2px rgba(0, 0, 0, 0.3));
      fill: #FFFFFF;
    }
  </style>`

// buttonTemplate renders the convert button with its CSS and script.
// The button stays hidden unless the frontend reports kernel access.
var buttonTemplate = template.Must(template.New("button").Parse(`<div class="nbtable-container">
    <button class="nbtable-convert" onclick="convertToInteractive('{{.Key}}')"
            title="Convert this table to an interactive view."
            style="display:none;">
      {{.Icon}}
    </button>
    {{.CSS}}
    <script>
      const buttonEl =
        document.querySelector('#{{.Key}} button.nbtable-convert');
      buttonEl.style.display =
        {{.Kernel}}.accessAllowed ? 'block' : 'none';

      async function convertToInteractive(key) {
        const element = document.querySelector('#' + key);
        const dataTable =
          await {{.Kernel}}.invokeFunction({{.CallbackName}}, [key], {});
        if (!dataTable) return;

        element.innerHTML = '';
        dataTable['output_type'] = 'display_data';
        await {{.Output}}.renderOutput(dataTable, element);
{{- if .DocURL}}
        const docLink = document.createElement('div');
        docLink.innerHTML = 'Like what you see? Visit the ' +
          '<a target="_blank" href="{{.DocURL}}">interactive table notebook</a>' +
          ' to learn more.';
        element.appendChild(docLink);
{{- end}}
      }
    </script>
  </div>`))

type buttonTemplateContext struct {
	Key          string
	Icon         template.HTML
	CSS          template.HTML
	Kernel       template.JS
	Output       template.JS
	CallbackName string
	DocURL       string
}

// containerTemplate wraps the static table HTML
// together with the buttons into an identifiable element.
var containerTemplate = template.Must(template.New("container").Parse(`<div id="{{.Key}}" class="nbtable-container">
  {{.TableHTML}}
  <div class="nbtable-buttons">
{{- range .Buttons}}
    {{.}}
{{- end}}
  </div>
</div>
`))

type containerTemplateContext struct {
	Key       string
	TableHTML template.HTML
	Buttons   []template.HTML
}
