package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"educonnect/internal/common/logger"
	"educonnect/internal/dispatch"
)

const indexTimeout = 2 * time.Second

// DeliveryLog writes one document per channel send attempt to Elasticsearch,
// giving operators a searchable audit trail of what was sent to whom. Indexing
// is best effort: a failed write is logged and dropped, it never slows down or
// fails a dispatch.
type DeliveryLog struct {
	client *elasticsearch.Client
	index  string
	log    logger.Logger
}

func NewDeliveryLog(client *elasticsearch.Client, index string, log logger.Logger) *DeliveryLog {
	return &DeliveryLog{client: client, index: index, log: log}
}

// RecordDelivery implements dispatch.AuditRecorder.
func (d *DeliveryLog) RecordDelivery(ctx context.Context, rec dispatch.DeliveryRecord) {
	body, err := json.Marshal(rec)
	if err != nil {
		d.log.WithError(err).Error("Failed to encode delivery record", map[string]interface{}{
			"dispatch_id": rec.DispatchID,
		})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	res, err := d.client.Index(
		d.index,
		bytes.NewReader(body),
		d.client.Index.WithContext(ctx),
	)
	if err != nil {
		d.log.WithError(err).Warn("Delivery audit write failed", map[string]interface{}{
			"dispatch_id": rec.DispatchID,
			"channel":     rec.Channel,
		})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		d.log.Warn("Delivery audit write rejected", map[string]interface{}{
			"dispatch_id": rec.DispatchID,
			"status":      res.Status(),
		})
	}
}
