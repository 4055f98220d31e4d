// Package gemini implements [ai.Provider] for Google's Gemini
// generateContent API.
//
// The API key travels as the "key" query parameter, the model name is part of
// the URL path, the system prompt is the top-level systemInstruction and the
// assistant role is called "model". Streaming uses streamGenerateContent with
// alt=sse. Gemini sends no completion sentinel: a stream ends when the
// response body is exhausted, so [GeminiProvider.IsStreamComplete] is always
// false. In-band error payloads are reported through [ai.StreamErrorDetector].
package gemini
