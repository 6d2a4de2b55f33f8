package sqlinline

// QEnqueueGenerationJob consumes one unit of the user's daily quota and
// enqueues the job in the same statement, so quota can never be oversubscribed
// under concurrent requests. Returns no rows when the quota is exhausted.
const QEnqueueGenerationJob = `--sql c48ff7b6-c13e-420a-a20b-8c8e0fcffd88
with charged as (
    update users
    set quota_used_today = quota_used_today + 1, updated_at = now()
    where id = $1::uuid and quota_used_today < quota_daily
    returning id, quota_daily - quota_used_today as remaining
)
insert into generation_jobs(id, user_id, ad_id, capability, provider, status, prompt_json, created_at, updated_at)
select gen_random_uuid(), charged.id, nullif($2::text, '')::uuid, $3::text, $4::text, 'QUEUED', $5::jsonb, now(), now()
from charged
returning id, (select remaining from charged);
`

const QSelectJobForUser = `--sql 29796237-296b-4b83-ac30-d06128c8ee92
select id, user_id, ad_id, capability, provider, status, prompt_json, result_json, error_message, created_at, updated_at
from generation_jobs
where id = $1::uuid and user_id = $2::uuid
limit 1;
`

const QSelectJobAssets = `--sql 69913b5b-e205-4abf-b0a5-7bbd8862a66c
select id, storage_key, mime, bytes, width, height, created_at
from assets
where job_id = $1::uuid and user_id = $2::uuid
order by created_at asc;
`
