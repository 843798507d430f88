package restyutil

import (
	"github.com/go-resty/resty/v2"
)

// DumpResponses writes every response the client receives to output,
// keyed by DumpID of the request URL. A nil output is a no-op.
func DumpResponses(client *resty.Client, output Output) {
	if output == nil {
		return
	}
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		output.Write(DumpID(res.Request.URL), formatExchange(res))
		return nil
	})
}
