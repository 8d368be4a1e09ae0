// Package main provides the pagerank command line: it ranks a corpus
// locally, serves rankings over HTTP, gRPC and RabbitMQ, and submits graphs
// to a running server.
package main

func main() {
	Execute()
}
