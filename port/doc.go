// Package port implements the input and output ports every node in a flow
// exposes: bounded, blocking-on-demand channels of [value.Value], each
// carrying its own end-of-stream accounting.
//
// An [Input] has one of three modes (QUEUE, STICKY, STATIC) governing how
// [Input.Get] behaves, and a requiredness ([Required], [Optional],
// [RequiredIfConnected]) consulted by the component pull-loop and by graph
// validation. An [Output] fans a sent value out to every connected input
// under one of three modes (REF, VALUE, CIRCLE) and, on [Output.Close],
// broadcasts end-of-stream to all of them exactly once.
//
// The internal queue backing a QUEUE-mode input is a bounded
// multi-producer/single-consumer lock-free queue
// (code.hybscloud.com/lfq's MPSC), wrapped here to present a blocking
// get/send API using code.hybscloud.com/iox's Backoff idiom instead of a
// hand-rolled spin loop.
package port
