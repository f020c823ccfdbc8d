// Package manifest provides the configuration boundary for the prompter.
//
// A module manifest is a small YAML (or JSON) document that declares the
// variables a module needs, such as its API key, endpoint, and model:
//
//	name: xai
//	label: xAI
//	summary: Prompts the xAI responses API.
//	config:
//	  variables:
//	    - name: api-key
//	      description: The xAI API key
//	      environment: XAI_API_KEY
//	    - name: endpoint
//	      default_value: https://api.x.ai
//
// Values are resolved at lookup time, see [Manifest.Variable]. Code that only
// needs values should depend on [Provider] rather than on the manifest itself.
package manifest
