// Package openai implements [ai.Provider] for the OpenAI Chat Completions wire
// format, which is also spoken by DeepSeek, Groq, Ollama, vLLM and most
// self-hosted gateways. It is the registry's fallback provider.
//
// Requests go to the profile's URL verbatim and authenticate with a Bearer
// token. The system prompt travels as the first message of the array. Streams
// are SSE "data: " lines carrying choices[0].delta.content and end with the
// literal line "data: [DONE]".
package openai
