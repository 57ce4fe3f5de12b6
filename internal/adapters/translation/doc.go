// Package translation contains the adapters for external translation and
// text-generation providers along with the offline legal glossary.
//
// # Providers
//
// GoogleTranslator and MyMemoryTranslator produce plain machine translations
// and implement ports.Translator. OllamaExplainer, HuggingFaceExplainer and
// ManualExplainer produce simplified legal renditions and implement
// ports.ExplainProvider. HuggingFaceSummarizer and PDFTextExtractor back the
// document summary endpoint.
//
// Ordering and fallback between providers is owned by the application
// services. Adapters only report failure through their error return.
package translation
