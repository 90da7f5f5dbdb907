// Package huggingface provides an HTTP client for the HuggingFace
// Inference API's zero-shot text classification models. It is consumed
// by the priority advisor, which treats every failure here as a signal
// to fall back to the local heuristic.
package huggingface
