package synthesis

import (
	"encoding/json"

	"noir-api-mapper/internal/types"
)

// BuildBatches partitions endpoints and route files into request payloads
// whose serialized size stays within maxChars. Packing is greedy and
// two-level: endpoints are chunked first against an empty file slice, then
// files are chunked against each endpoint chunk, so every endpoint chunk is
// paired with every file that fits alongside it. Input order is preserved
// throughout; which file lands next to which endpoint context must be
// reproducible run to run.
//
// An empty endpoint list still yields file batches against one empty
// endpoint chunk, and fully empty input yields exactly one empty batch.
func BuildBatches(baseURL string, endpoints []types.NoirEndpoint, files []types.RouteFile, maxChars int) []types.RequestBatch {
	endpointChunks := chunkBySize(endpoints, maxChars, func(chunk []types.NoirEndpoint) int {
		return payloadSize(types.RequestBatch{
			BaseURL:   baseURL,
			Endpoints: chunk,
			Files:     []types.RouteFile{},
		})
	})
	// Route files are still worth sending even when Noir found nothing.
	if len(endpointChunks) == 0 {
		endpointChunks = [][]types.NoirEndpoint{{}}
	}

	var batches []types.RequestBatch
	for _, endpointChunk := range endpointChunks {
		fileChunks := chunkBySize(files, maxChars, func(chunk []types.RouteFile) int {
			return payloadSize(types.RequestBatch{
				BaseURL:   baseURL,
				Endpoints: endpointChunk,
				Files:     chunk,
			})
		})
		if len(fileChunks) == 0 {
			fileChunks = [][]types.RouteFile{{}}
		}
		for _, fileChunk := range fileChunks {
			batches = append(batches, types.RequestBatch{
				BaseURL:   baseURL,
				Endpoints: endpointChunk,
				Files:     fileChunk,
			})
		}
	}
	return batches
}

// payloadSize is the length of the batch's canonical JSON encoding. Struct
// fields marshal in declaration order, which is all the determinism the
// size check needs.
func payloadSize(batch types.RequestBatch) int {
	data, _ := json.Marshal(batch)
	return len(data)
}

// chunkBySize splits items into maximal prefixes whose measured size stays
// within maxChars. A single item that exceeds the budget on its own is
// forced into a singleton chunk: forwarding it once gets a clear upstream
// validation failure instead of an endless packing loop.
func chunkBySize[T any](items []T, maxChars int, size func([]T) int) [][]T {
	var chunks [][]T
	var current []T
	for _, item := range items {
		candidate := append(current[:len(current):len(current)], item)
		if size(candidate) <= maxChars {
			current = candidate
			continue
		}
		if len(current) == 0 {
			chunks = append(chunks, []T{item})
			continue
		}
		chunks = append(chunks, current)
		current = []T{item}
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
