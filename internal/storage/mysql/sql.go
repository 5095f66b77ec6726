package mysql

const createApprovalsSQL = `
CREATE TABLE IF NOT EXISTS approvals (
  review_id  VARCHAR(191) NOT NULL,
  approved   TINYINT(1)   NOT NULL DEFAULT 0,
  channel    VARCHAR(32)  NOT NULL DEFAULT 'hostaway',
  listing_id VARCHAR(255) NULL,
  updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
  PRIMARY KEY (review_id),
  KEY idx_approvals_channel_updated (channel, updated_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

// updated_at is set explicitly: ON UPDATE does not fire when an identical row is re-written.
const upsertApprovalSQL = `
INSERT INTO approvals
  (review_id, approved, channel, listing_id, updated_at)
VALUES
  (?, ?, ?, ?, CURRENT_TIMESTAMP(6))
ON DUPLICATE KEY UPDATE
  approved   = VALUES(approved),
  channel    = VALUES(channel),
  listing_id = VALUES(listing_id),
  updated_at = CURRENT_TIMESTAMP(6)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const approvalsMapSQL = `SELECT review_id, approved FROM approvals`

const getApprovalSQL = `
SELECT review_id, approved, channel, listing_id, updated_at
FROM approvals
WHERE review_id = ?
`

const listApprovalsSQL = `
SELECT review_id, approved, channel, listing_id, updated_at
FROM approvals
ORDER BY updated_at DESC, review_id
`

const listApprovalsByChannelSQL = `
SELECT review_id, approved, channel, listing_id, updated_at
FROM approvals
WHERE channel = ?
ORDER BY updated_at DESC, review_id
`
