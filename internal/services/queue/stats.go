package queue

import "fmt"

// GetQueueStats combines the broker's view of the queue with the jobs this
// process has finished since it started.
func (q *QueueService) GetQueueStats() (map[string]interface{}, error) {
	queueInfo, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue: %w", err)
	}

	stats := q.jobCounters()
	stats["name"] = queueInfo.Name
	stats["pending"] = queueInfo.Messages
	stats["consumers"] = queueInfo.Consumers
	return stats, nil
}

func (q *QueueService) jobCounters() map[string]interface{} {
	return map[string]interface{}{
		"completed": q.completed.Load(),
		"failed":    q.failed.Load(),
		"rejected":  q.rejected.Load(),
		"requeued":  q.requeued.Load(),
	}
}

// HealthCheck checks if RabbitMQ is available
func (q *QueueService) HealthCheck() string {
	if q.conn == nil || q.conn.IsClosed() {
		return "unhealthy: connection closed"
	}

	if q.channel == nil {
		return "unhealthy: channel not available"
	}

	return "healthy"
}
