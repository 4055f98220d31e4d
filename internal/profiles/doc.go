// Package profiles loads provider profiles from a YAML or TOML file and
// resolves which one a session uses.
//
// A profiles file holds a list under the "profiles" key:
//
//	profiles:
//	  - name: OpenAI
//	    format_type: openai
//	    api_url: https://api.openai.com/v1/chat/completions
//	    api_key: ${OPENAI_API_KEY}
//	    model_name: gpt-4o-mini
//	    is_default: true
//
// API keys are expanded from the environment when a profile is handed out,
// profiles without an id get one derived from their name, and at most one
// profile may be marked default. [Set.Save] writes the file back with keys
// unexpanded. [Watch] reloads the file whenever it changes on disk.
package profiles
